package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	WebSocket WebSocketConfig `yaml:"websocket"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// HTTPPort 固定端口，用于单例锁
	HTTPPort string `yaml:"http_port"`
}

// StoreConfig 房间存储配置
type StoreConfig struct {
	// Dir 房间文件目录，留空表示使用 <数据目录>/chatrooms
	Dir string `yaml:"dir"`
	// DatabasePath 标注日志数据库路径，留空表示使用 <数据目录>/annotation.db
	DatabasePath string `yaml:"database_path"`
}

// WebSocketConfig WebSocket 配置
type WebSocketConfig struct {
	ReadBufferSize  int `yaml:"read_buffer_size"`
	WriteBufferSize int `yaml:"write_buffer_size"`
}

// ConfigFileName 配置文件名（位于数据目录下）
const ConfigFileName = "config.yaml"

// NewConfig 创建配置
// 默认值基础上叠加 <数据目录>/config.yaml 中的显式设置（文件不存在则忽略）
func NewConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			HTTPPort: ":19870",
		},
		Store: StoreConfig{
			Dir:          "",
			DatabasePath: "",
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	// 叠加配置文件（可选）
	data, err := os.ReadFile(filepath.Join(GetDataDir(), ConfigFileName))
	if err == nil {
		// 解析失败时保留默认值
		_ = yaml.Unmarshal(data, cfg)
	}

	// 路径默认值在读取配置文件之后填充
	if cfg.Store.Dir == "" {
		cfg.Store.Dir = GetChatRoomsDir()
	}
	if cfg.Store.DatabasePath == "" {
		cfg.Store.DatabasePath = filepath.Join(GetDataDir(), "annotation.db")
	}

	return cfg
}

// NewServerConfig 创建服务器配置
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}

// NewStoreConfig 创建存储配置
func NewStoreConfig(cfg *Config) *StoreConfig {
	return &cfg.Store
}
