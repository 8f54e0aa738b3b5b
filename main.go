// Package main Blog API Server 主程序
//
// 博客管理后台，提供用户、角色权限、分类、文章等接口。
// 写接口通过防重复锁保护，同一个操作在执行中时重复提交会被拒绝。

// @title           Blog API
// @version         1.0.0
// @description     博客管理后台API服务器

// @BasePath  /api/v1

// @securityDefinitions.apikey  BearerAuth
// @in                         header
// @name                       Authorization
// @description                JWT token, format: Bearer {token}
package main

import (
	"github.com/codelieche/blog/pkg/app"
)

func main() {
	app.Run()
}
