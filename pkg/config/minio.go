package config

// minio 对象存储配置，文章附件上传使用
type minio struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
}

// Enabled 是否配置了MinIO
func (m *minio) Enabled() bool {
	return m.Endpoint != "" && m.AccessKeyID != ""
}

var MinIO *minio

func init() {
	MinIO = &minio{
		Endpoint:        GetDefaultEnv("MINIO_ENDPOINT", ""),
		AccessKeyID:     GetDefaultEnv("MINIO_ACCESS_KEY_ID", ""),
		SecretAccessKey: GetDefaultEnv("MINIO_SECRET_ACCESS_KEY", ""),
		UseSSL:          getEnvBool("MINIO_USE_SSL", false),
		BucketName:      GetDefaultEnv("MINIO_BUCKET_NAME", "blog"),
	}
}
