package config

type log struct {
	Level      string // 日志级别
	Format     string // 日志格式: json, console
	Output     string // 日志输出: console, file, both
	FilePath   string // 日志文件路径
	MaxSize    int    // 日志文件最大大小(MB)
	MaxAge     int    // 日志文件最大保留天数
	MaxBackups int    // 日志文件最大备份数
	Compress   bool   // 日志文件是否压缩
}

var Log *log

func init() {
	Log = &log{
		Level:      GetDefaultEnv("LOG_LEVEL", "info"),
		Format:     GetDefaultEnv("LOG_FORMAT", "json"),
		Output:     GetDefaultEnv("LOG_OUTPUT", "console"),
		FilePath:   GetDefaultEnv("LOG_FILE_PATH", "./logs/blog.log"),
		MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
		MaxAge:     getEnvInt("LOG_MAX_AGE", 7),
		MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 0),
		Compress:   getEnvBool("LOG_COMPRESS", false),
	}
}
