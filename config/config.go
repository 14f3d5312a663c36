package config

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	globalConfig Config
	once         sync.Once
)

// Config 扁平化配置结构体
type Config struct {
	// 服务器配置
	ServerHost         string        `mapstructure:"server_host"`
	ServerPort         int           `mapstructure:"server_port"`
	ServerDomain       string        `mapstructure:"server_domain"`
	ServerReadTimeout  time.Duration `mapstructure:"server_read_timeout"`
	ServerWriteTimeout time.Duration `mapstructure:"server_write_timeout"`
	ServerIdleTimeout  time.Duration `mapstructure:"server_idle_timeout"`

	// 数据库配置
	DBType            string `mapstructure:"db_type"`
	DBHost            string `mapstructure:"db_host"`
	DBPort            int    `mapstructure:"db_port"`
	DBUsername        string `mapstructure:"db_username"`
	DBPassword        string `mapstructure:"db_password"`
	DBName            string `mapstructure:"db_name"`
	DBFilePath        string `mapstructure:"db_file_path"`
	DBMaxOpenConns    int    `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns    int    `mapstructure:"db_max_idle_conns"`
	DBConnMaxLifetime int    `mapstructure:"db_conn_max_lifetime"`

	// JWT 配置
	JwtSecret           string `mapstructure:"jwt_secret"`
	JwtExpiresIn        string `mapstructure:"jwt_expires_in"`
	JwtRefreshExpiresIn string `mapstructure:"jwt_refresh_expires_in"`

	// 存储配置（大附件落盘，小附件直接存数据库行内）
	StorageType           string `mapstructure:"storage_type"`
	StorageLocalPath      string `mapstructure:"storage_local_path"`
	StorageInlineLimitKB  int    `mapstructure:"storage_inline_limit_kb"`
	MinioEndpoint         string `mapstructure:"minio_endpoint"`
	MinioAccessKeyID      string `mapstructure:"minio_access_key_id"`
	MinioSecretAccessKey  string `mapstructure:"minio_secret_access_key"`
	MinioBucketName       string `mapstructure:"minio_bucket_name"`
	MinioUseSSL           bool   `mapstructure:"minio_use_ssl"`
	WebdavEndpoint        string `mapstructure:"webdav_endpoint"`
	WebdavUsername        string `mapstructure:"webdav_username"`
	WebdavPassword        string `mapstructure:"webdav_password"`
	WebdavBasePath        string `mapstructure:"webdav_base_path"`

	// 限流配置
	RateLimitApiRPS        float64       `mapstructure:"rate_limit_api_rps"`
	RateLimitApiBurst      int           `mapstructure:"rate_limit_api_burst"`
	RateLimitResourceRPS   float64       `mapstructure:"rate_limit_resource_rps"`
	RateLimitResourceBurst int           `mapstructure:"rate_limit_resource_burst"`
	RateLimitAuthRPS       float64       `mapstructure:"rate_limit_auth_rps"`
	RateLimitAuthBurst     int           `mapstructure:"rate_limit_auth_burst"`
	RateLimitExpireTime    time.Duration `mapstructure:"rate_limit_expire_time"`

	// 上传配置
	UploadMaxSizeMB int `mapstructure:"upload_max_size_mb"`

	// Worker 配置
	WorkerCount         int `mapstructure:"worker_count"`
	WorkerMemoryLimitMB int `mapstructure:"worker_memory_limit_mb"`
}

// InitConfig Initialize configuration
func InitConfig() {
	once.Do(func() {
		loadConfig()
	})
}

func Get() *Config {
	return &globalConfig
}

// loadConfig Core configuration loading
func loadConfig() {
	setDefaults()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Info: .env file not found, using defaults and environment variables")
	} else {
		fmt.Fprintln(os.Stderr, "Info: Loaded configuration from .env file")
	}

	viper.AutomaticEnv()
	for _, key := range viper.AllKeys() {
		viper.BindEnv(key)
	}

	if err := viper.Unmarshal(&globalConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: Unable to unmarshal config, %v\n", err)
		os.Exit(1)
	}

	if globalConfig.WorkerCount <= 0 {
		globalConfig.WorkerCount = getCpus()
	}
}

// setDefaults 设置默认值
func setDefaults() {
	// 服务器配置默认值
	viper.SetDefault("server_host", "127.0.0.1")
	viper.SetDefault("server_port", 8080)
	viper.SetDefault("server_domain", "")
	viper.SetDefault("server_read_timeout", "15s")
	viper.SetDefault("server_write_timeout", "30s")
	viper.SetDefault("server_idle_timeout", "120s")

	// 数据库配置默认值
	viper.SetDefault("db_type", "sqlite")
	viper.SetDefault("db_host", "localhost")
	viper.SetDefault("db_port", 5432)
	viper.SetDefault("db_username", "postgres")
	viper.SetDefault("db_password", "")
	viper.SetDefault("db_name", "asset-office")
	viper.SetDefault("db_file_path", "")
	viper.SetDefault("db_max_open_conns", 100)
	viper.SetDefault("db_max_idle_conns", 25)
	viper.SetDefault("db_conn_max_lifetime", 3600)

	// JWT 配置默认值
	viper.SetDefault("jwt_secret", "")
	viper.SetDefault("jwt_expires_in", "30m")
	viper.SetDefault("jwt_refresh_expires_in", "168h")

	// 存储配置默认值
	viper.SetDefault("storage_type", "local")
	viper.SetDefault("storage_local_path", "./data/files")
	viper.SetDefault("storage_inline_limit_kb", 512)
	viper.SetDefault("minio_endpoint", "")
	viper.SetDefault("minio_bucket_name", "asset-office")
	viper.SetDefault("minio_use_ssl", true)
	viper.SetDefault("webdav_endpoint", "")

	// 限流配置默认值
	viper.SetDefault("rate_limit_api_rps", 30.0)
	viper.SetDefault("rate_limit_api_burst", 60)
	viper.SetDefault("rate_limit_resource_rps", 100.0)
	viper.SetDefault("rate_limit_resource_burst", 200)
	viper.SetDefault("rate_limit_auth_rps", 0.5)
	viper.SetDefault("rate_limit_auth_burst", 5)
	viper.SetDefault("rate_limit_expire_time", "10m")

	// 上传配置默认值
	viper.SetDefault("upload_max_size_mb", 50)

	// Worker 配置默认值
	viper.SetDefault("worker_count", 0) // 0 表示使用默认值
	viper.SetDefault("worker_memory_limit_mb", 512)
}

// Addr 返回监听地址，格式为 "host:port"
func (c *Config) Addr() string {
	host := c.ServerHost
	if host == "" {
		host = "0.0.0.0"
	}
	port := c.ServerPort
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// BaseURL 返回基础 URL，用于生成附件链接
func (c *Config) BaseURL() string {
	if c.ServerDomain != "" {
		return c.ServerDomain
	}
	host := c.ServerHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, c.ServerPort)
}

// InlineLimitBytes 返回行内 blob 存储的大小上限（字节）
func (c *Config) InlineLimitBytes() int64 {
	if c.StorageInlineLimitKB <= 0 {
		return 512 * 1024
	}
	return int64(c.StorageInlineLimitKB) * 1024
}

// GetWorkerCount 返回 worker 数量
func (c *Config) GetWorkerCount() int {
	if c.WorkerCount <= 0 {
		return getCpus()
	}
	return c.WorkerCount
}

// getCpus 获取默认线程数量
func getCpus() int {
	n := runtime.GOMAXPROCS(0)
	if n < 2 {
		return 2
	}
	return n
}
