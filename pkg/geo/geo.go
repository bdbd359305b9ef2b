package geo

import (
	"context"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// Country 访客国家信息（来自 cookie 或 IP 定位）
type Country struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	City   string `json:"city"`
	Region string `json:"region"`
}

// DefaultCountry IP 定位失败时的兜底国家
var DefaultCountry = Country{
	Name: "United States",
	Code: "US",
}

// ==================== IP 定位客户端 ====================

// Client ipinfo.io 定位客户端
type Client struct {
	http  *resty.Client
	token string
}

// NewClient 创建定位客户端
// token 为空时 Lookup 直接返回兜底国家
func NewClient(token string) *Client {
	client := resty.New()
	client.SetBaseURL("https://ipinfo.io")
	// 设置超时和重试，防止网络波动
	client.SetTimeout(5 * time.Second)
	client.SetRetryCount(2)

	return &Client{http: client, token: token}
}

// ipinfoResp ipinfo.io 响应体
type ipinfoResp struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Region  string `json:"region"`
}

// Lookup 按请求来源 IP 解析国家，任何失败都回退到默认国家
func (c *Client) Lookup(ctx context.Context, ip string) Country {
	if c == nil || c.token == "" {
		return DefaultCountry
	}

	var data ipinfoResp
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("token", c.token).
		SetResult(&data)
	if ip != "" {
		req.SetHeader("X-Forwarded-For", ip)
	}

	resp, err := req.Get("/")
	if err != nil || resp.IsError() || data.Country == "" {
		log.Printf("IP 定位失败，使用默认国家: %v", err)
		return DefaultCountry
	}

	return Country{
		Name:   CountryName(data.Country),
		Code:   data.Country,
		City:   data.City,
		Region: data.Region,
	}
}
