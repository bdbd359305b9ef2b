package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// 时间戳允许的最大偏移，超出视为重放
const toleranceSeconds = 300

// Verifier 身份服务 webhook 签名校验
// 签名串为 "{msg_id}.{timestamp}.{body}" 的 HMAC-SHA256，密钥带 whsec_ 前缀
type Verifier struct {
	key []byte
}

// NewVerifier 创建签名校验器
func NewVerifier(secret string) (*Verifier, error) {
	raw := strings.TrimPrefix(secret, "whsec_")
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("webhook 密钥格式错误: %w", err)
	}
	return &Verifier{key: key}, nil
}

// Verify 校验一条 webhook 消息
// msgID/timestamp/signatures 来自请求头，signatures 可能包含多个空格分隔的候选签名
func (v *Verifier) Verify(msgID, timestamp, signatures string, body []byte) error {
	if msgID == "" || timestamp == "" || signatures == "" {
		return errors.New("缺少签名头")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errors.New("时间戳格式错误")
	}
	now := time.Now().Unix()
	if ts < now-toleranceSeconds || ts > now+toleranceSeconds {
		return errors.New("时间戳超出允许范围")
	}

	expected := v.sign(msgID, timestamp, body)
	for _, candidate := range strings.Split(signatures, " ") {
		// 每个候选形如 "v1,<base64>"
		parts := strings.SplitN(candidate, ",", 2)
		if len(parts) != 2 || parts[0] != "v1" {
			continue
		}
		if hmac.Equal([]byte(parts[1]), []byte(expected)) {
			return nil
		}
	}
	return errors.New("签名校验失败")
}

func (v *Verifier) sign(msgID, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, v.key)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
