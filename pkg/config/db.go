package config

import (
	"fmt"
)

// database 数据库配置
type database struct {
	Driver   string // 数据库的driver：mysql, postgresql, postgres
	Host     string // 数据库地址
	Port     int    // 数据库端口
	Database string // 数据库
	User     string // 数据库用户
	Password string // 数据库密码
	Schema   string // PG数据库的schema
}

// IsPostgres 是否是PG数据库
func (db *database) IsPostgres() bool {
	return db.Driver == "postgresql" || db.Driver == "postgres"
}

// GetDSN 获取数据库的DSN
func (db *database) GetDSN() string {
	if db.IsPostgres() {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d search_path=%s sslmode=disable TimeZone=Asia/Shanghai",
			db.Host, db.User, db.Password, db.Database, db.Port, db.Schema)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		db.User, db.Password, db.Host, db.Port, db.Database)
}

// Database 数据库配置
var Database *database

// parseDatabase 解析数据库配置
func parseDatabase() {
	Database = &database{
		Driver:   GetDefaultEnv("DB_DRIVER", "mysql"),
		Host:     GetDefaultEnv("DB_HOST", "127.0.0.1"),
		Port:     getEnvInt("DB_PORT", 3306),
		Database: GetDefaultEnv("DB_NAME", "blog"),
		User:     GetDefaultEnv("DB_USER", "root"),
		Password: GetDefaultEnv("DB_PASSWORD", "root"),
		Schema:   GetDefaultEnv("DB_SCHEMA", "public"),
	}
}

func init() {
	parseDatabase()
}
