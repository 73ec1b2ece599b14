// Package docs swagger 文档，接口变化后用 swag init -g cmd/server/main.go 重新生成
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/users/{name}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "用户主页",
                "parameters": [
                    {"type": "string", "description": "用户名", "name": "name", "in": "path", "required": true},
                    {"type": "integer", "default": 1, "description": "页码", "name": "page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/users/{name}/packages/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "用户维护的包（分页）",
                "parameters": [
                    {"type": "string", "description": "用户名", "name": "name", "in": "path", "required": true},
                    {"type": "integer", "default": 1, "description": "页码", "name": "page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "当前用户主页",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/users/{name}/favorites": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Favorite"],
                "summary": "用户收藏列表（分页）",
                "parameters": [
                    {"type": "string", "description": "用户名", "name": "name", "in": "path", "required": true},
                    {"type": "integer", "default": 1, "description": "页码", "name": "page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Favorite"],
                "summary": "添加收藏",
                "parameters": [
                    {"type": "string", "description": "用户名", "name": "name", "in": "path", "required": true},
                    {"description": "包名", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/favorite.AddFavoriteRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/users/{name}/favorites/{vendor}/{package}": {
            "delete": {
                "tags": ["Favorite"],
                "summary": "取消收藏",
                "parameters": [
                    {"type": "string", "description": "用户名", "name": "name", "in": "path", "required": true},
                    {"type": "string", "description": "vendor", "name": "vendor", "in": "path", "required": true},
                    {"type": "string", "description": "包名", "name": "package", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/spammers/{name}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Spam"],
                "summary": "标记垃圾用户并废弃其维护的包",
                "parameters": [
                    {"type": "string", "description": "用户名", "name": "name", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "207": {"description": "Multi-Status"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/spammers/index-removal": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Spam"],
                "summary": "重试索引移除",
                "parameters": [
                    {"description": "包名列表", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/spam.RetryIndexRemovalRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "207": {"description": "Multi-Status"}}
            }
        },
        "/trigger-github-sync/": {
            "post": {
                "produces": ["application/json"],
                "tags": ["GitHub"],
                "summary": "触发 GitHub 仓库同步",
                "responses": {"202": {"description": "Accepted"}, "400": {"description": "Bad Request"}}
            }
        },
        "/oauth/github/disconnect": {
            "post": {
                "produces": ["application/json"],
                "tags": ["GitHub"],
                "summary": "解除 GitHub 绑定",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "favorite.AddFavoriteRequest": {
            "type": "object",
            "required": ["package"],
            "properties": {"package": {"type": "string", "maxLength": 255}}
        },
        "spam.RetryIndexRemovalRequest": {
            "type": "object",
            "required": ["packages"],
            "properties": {"packages": {"type": "array", "minItems": 1, "items": {"type": "string"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Registry API",
	Description:      "包仓库用户相关接口：主页、收藏、反垃圾与 GitHub 同步",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
