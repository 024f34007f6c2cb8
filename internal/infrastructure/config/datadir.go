package config

import (
	"os"
	"path/filepath"
	"sync"
)

const (
	// EnvDataDir 数据目录环境变量名
	EnvDataDir = "ANNOTATION_DATA_DIR"
	// DefaultDataDirName 默认数据目录名
	DefaultDataDirName = ".annotation-tool"
	// ChatRoomsDirName 房间文件子目录名
	ChatRoomsDirName = "chatrooms"
)

var (
	dataDirOnce sync.Once
	dataDirPath string
)

// GetDataDir 获取标注工具数据根目录
// 优先读取 ANNOTATION_DATA_DIR 环境变量，默认 ~/.annotation-tool/
// 此函数是所有数据路径的唯一入口，禁止直接拼接 homeDir + ".annotation-tool"
func GetDataDir() string {
	dataDirOnce.Do(func() {
		if dir := os.Getenv(EnvDataDir); dir != "" {
			dataDirPath = dir
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				// 回退到当前目录
				dataDirPath = DefaultDataDirName
				return
			}
			dataDirPath = filepath.Join(homeDir, DefaultDataDirName)
		}
	})
	return dataDirPath
}

// GetChatRoomsDir 获取房间文件存储目录（<数据目录>/chatrooms）
func GetChatRoomsDir() string {
	return filepath.Join(GetDataDir(), ChatRoomsDirName)
}

// ResetDataDir 重置数据目录缓存（仅用于测试）
func ResetDataDir() {
	dataDirOnce = sync.Once{}
	dataDirPath = ""
}
