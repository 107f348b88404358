// Package sheets Google Apps Script 表格桥的 HTTP 客户端
//
// 协议：
//
//	GET  {url}?type=<sheet>               -> {"success":true,"data":[{...}]}
//	POST {url} {"type","action","data"}   -> {"success":true} / {"success":false,"error":"..."}
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrBridge 桥不可达或返回失败
var ErrBridge = errors.New("sheets bridge error")

// Config 客户端配置
type Config struct {
	URL     string        // Apps Script Web App 地址
	Token   string        // 共享密钥，随请求带上 (可选)
	Timeout time.Duration // 默认 20s
	Debug   bool
}

// Client 表格桥客户端
type Client struct {
	http  *resty.Client
	url   string
	token string
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type syncBody struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   any    `json:"data"`
	Token  string `json:"token,omitempty"`
}

// New 创建客户端
// 不做自动重试：写操作由用户手动重试
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	client := resty.New().
		SetDebug(cfg.Debug).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "equipmall-sheets/1.0")

	return &Client{http: client, url: cfg.URL, token: cfg.Token}
}

// Fetch 读取整张表
func (c *Client) Fetch(ctx context.Context, sheet string) ([]map[string]any, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("type", sheet)
	if c.token != "" {
		req.SetQueryParam("token", c.token)
	}

	resp, err := req.Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrBridge, sheet, err)
	}
	env, err := decode(resp)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", sheet, err)
	}

	rows := make([]map[string]any, 0)
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return rows, nil
	}
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, fmt.Errorf("%w: fetch %s: decode rows: %v", ErrBridge, sheet, err)
	}
	return rows, nil
}

// Sync 写入：action 为 create / update / delete / bulk
func (c *Client) Sync(ctx context.Context, sheet, action string, data any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(syncBody{Type: sheet, Action: action, Data: data, Token: c.token}).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrBridge, action, sheet, err)
	}
	if _, err := decode(resp); err != nil {
		return fmt.Errorf("%s %s: %w", action, sheet, err)
	}
	return nil
}

func decode(resp *resty.Response) (*envelope, error) {
	if resp.IsError() {
		return nil, fmt.Errorf("%w: http %d", ErrBridge, resp.StatusCode())
	}
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrBridge, err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("%w: %s", ErrBridge, msg)
	}
	return &env, nil
}
