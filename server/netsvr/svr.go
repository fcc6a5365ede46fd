// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package netsvr 定義 HTTP server 的抽象，handler 與子模組只依賴 NetRouter。
package netsvr

import (
	"net/http"

	"github.com/zintix-labs/casinolab/server/app"
)

// NetSvr 可註冊路由並受 app.App 管理生命週期
type NetSvr interface {
	NetRouter
	app.Component
}

// NetRouter 純路由行為；不含 Run/Shutdown，交給子模組時不會被拿去控制 server 啟停。
type NetRouter interface {
	Use(middleware func(http.Handler) http.Handler)

	Get(path string, h http.HandlerFunc)
	Post(path string, h http.HandlerFunc)
	Put(path string, h http.HandlerFunc)
	Patch(path string, h http.HandlerFunc)
	Delete(path string, h http.HandlerFunc)
	Handle(path string, h http.Handler)

	Group(path string, fn func(NetRouter))
	// With 回傳只套用額外 middleware 的子路由
	With(middlewares ...func(http.Handler) http.Handler) NetRouter
}
