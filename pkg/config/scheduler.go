package config

// scheduler 定时任务配置
type scheduler struct {
	Enabled     bool
	PublishSpec string // 定时发布文章的cron表达式(带秒)
}

var Scheduler *scheduler

func init() {
	Scheduler = &scheduler{
		Enabled:     getEnvBool("SCHEDULER_ENABLED", true),
		PublishSpec: GetDefaultEnv("SCHEDULER_PUBLISH_SPEC", "0 * * * * *"),
	}
}
