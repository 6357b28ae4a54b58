package main

import (
	"os"
	"runtime"
	"strings"
)

// detectChineseOS 检测操作系统是否为中文环境
func detectChineseOS() bool {
	// Windows 使用 API 检测
	if runtime.GOOS == "windows" && detectWindowsChinese() {
		return true
	}

	// Unix/Linux/Mac: 检查环境变量
	langVars := []string{"LC_ALL", "LC_MESSAGES", "LANGUAGE", "LANG"}
	for _, v := range langVars {
		if val := os.Getenv(v); val != "" {
			lower := strings.ToLower(val)
			return strings.HasPrefix(lower, "zh") || strings.Contains(lower, "chinese")
		}
	}

	return false
}
