package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client 外部身份服务的管理端客户端
// 用户的注册和登录都在身份服务完成，这里只负责把本地角色回写到其私有元数据
type Client struct {
	http *resty.Client
}

// NewClient 创建身份服务客户端
// secretKey 为空时所有回写操作降级为 no-op
func NewClient(baseURL, secretKey string) *Client {
	if secretKey == "" {
		return &Client{}
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(10 * time.Second)
	client.SetRetryCount(2)
	client.SetAuthToken(secretKey)
	return &Client{http: client}
}

// SyncRole 把本地角色回写到身份服务用户的私有元数据
func (c *Client) SyncRole(ctx context.Context, externalUserID, role string) error {
	if c == nil || c.http == nil {
		return nil
	}

	body := map[string]interface{}{
		"private_metadata": map[string]string{"role": role},
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Patch(fmt.Sprintf("/users/%s/metadata", externalUserID))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("身份服务返回错误: %s", resp.Status())
	}
	return nil
}
