package core

import (
	"database/sql"
	"sync"
	"time"

	"github.com/codelieche/blog/pkg/config"
	"github.com/codelieche/blog/pkg/utils/logger"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	// db 全局数据库连接实例
	db   *gorm.DB
	dbMu sync.Mutex
)

// GetDB 获取数据库连接实例
// 如果连接不存在，会尝试重新创建连接
func GetDB() (*gorm.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db != nil {
		return db, nil
	}

	var err error
	db, err = connectDatabase()
	return db, err
}

// connectDatabase 创建数据库连接并配置连接池，支持MySQL和PostgreSQL
func connectDatabase() (*gorm.DB, error) {
	var dialector gorm.Dialector
	dsn := config.Database.GetDSN()

	if config.Database.IsPostgres() {
		dialector = postgres.Open(dsn)
	} else {
		dialector = mysql.New(mysql.Config{
			DSN:                       dsn,
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err == nil {
		configureConnectionPool(sqlDB)
		logger.Info("数据库连接池配置完成",
			zap.String("driver", config.Database.Driver),
			zap.Int("max_idle_conns", 20),
			zap.Int("max_open_conns", 100))
	}

	return gormDB, nil
}

// configureConnectionPool 配置数据库连接池参数
func configureConnectionPool(sqlDB *sql.DB) {
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)
}

// AutoMigrate 同步所有表结构
func AutoMigrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&Permission{},
		&Role{},
		&User{},
		&Category{},
		&Article{},
		&Attachment{},
	)
}

// CloseDB 关闭数据库连接
func CloseDB() error {
	dbMu.Lock()
	defer dbMu.Unlock()
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		logger.Info("正在关闭数据库连接...")
		db = nil
		return sqlDB.Close()
	}
	return nil
}
