package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"testing"
	"time"
)

const testSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

func signFor(t *testing.T, secret, msgID, timestamp string, body []byte) string {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(secret[len("whsec_"):])
	if err != nil {
		t.Fatalf("测试密钥解码失败: %v", err)
	}
	mac := hmac.New(sha256.New, raw)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(body)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifier_RoundTrip(t *testing.T) {
	v, err := NewVerifier(testSecret)
	if err != nil {
		t.Fatalf("创建校验器失败: %v", err)
	}

	body := []byte(`{"type":"user.created","data":{"id":"ext-1"}}`)
	msgID := "msg_2KWPBgLlAfxdpx2AI54pPJ85f4W"
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	if err = v.Verify(msgID, ts, signFor(t, testSecret, msgID, ts, body), body); err != nil {
		t.Fatalf("合法签名应通过校验: %v", err)
	}
}

func TestVerifier_MultipleCandidateSignatures(t *testing.T) {
	v, _ := NewVerifier(testSecret)
	body := []byte(`{}`)
	msgID := "msg_1"
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	// 轮换密钥期间头里会带多个候选签名, 命中任意一个即可
	sigs := "v1,bm90LXRoZS1yaWdodC1vbmU= " + signFor(t, testSecret, msgID, ts, body)
	if err := v.Verify(msgID, ts, sigs, body); err != nil {
		t.Fatalf("候选签名命中应通过校验: %v", err)
	}
}

func TestVerifier_TamperedBody(t *testing.T) {
	v, _ := NewVerifier(testSecret)
	body := []byte(`{"type":"user.created"}`)
	msgID := "msg_1"
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := signFor(t, testSecret, msgID, ts, body)

	if err := v.Verify(msgID, ts, sig, []byte(`{"type":"user.deleted"}`)); err == nil {
		t.Fatal("篡改正文后应校验失败")
	}
}

func TestVerifier_StaleTimestamp(t *testing.T) {
	v, _ := NewVerifier(testSecret)
	body := []byte(`{}`)
	msgID := "msg_1"
	ts := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)
	sig := signFor(t, testSecret, msgID, ts, body)

	if err := v.Verify(msgID, ts, sig, body); err == nil {
		t.Fatal("过期时间戳应拒绝")
	}
}

func TestVerifier_MissingHeaders(t *testing.T) {
	v, _ := NewVerifier(testSecret)
	if err := v.Verify("", "", "", []byte(`{}`)); err == nil {
		t.Fatal("缺少签名头应拒绝")
	}
}

func TestNewVerifier_BadSecret(t *testing.T) {
	if _, err := NewVerifier("whsec_not-base64!!!"); err == nil {
		t.Fatal("非法密钥应报错")
	}
}
