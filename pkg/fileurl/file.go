// Package fileurl 提供文件路径相关的辅助函数
package fileurl

import (
	"os"
	"path/filepath"
)

// IsExist 判断文件或目录是否存在
func IsExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// CreatePath 创建文件所在的目录（如果不存在）
func CreatePath(file string, perm os.FileMode) error {
	dir := filepath.Dir(file)
	if IsExist(dir) {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

// GetExePath 获取可执行文件所在目录
func GetExePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
