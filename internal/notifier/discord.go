package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
)

// 中文说明：
// Discord 通知器：批处理结束后把结果消息与 watchlist 文件推送至 webhook。

type Discord struct {
	WebhookURL string
	Client     *http.Client

	retryDelay time.Duration
}

func NewDiscord(webhookURL string) *Discord {
	return &Discord{
		WebhookURL: webhookURL,
		Client:     &http.Client{Timeout: 15 * time.Second},
		retryDelay: time.Second,
	}
}

// SendText 发送文本消息（带最多 3 次重试）。
func (d *Discord) SendText(text string) error {
	if d.WebhookURL == "" {
		return fmt.Errorf("Discord webhook 未配置")
	}
	payload := map[string]any{"content": text}
	body, _ := json.Marshal(payload)

	var lastErr error
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("POST", d.WebhookURL, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if err := d.do(req, i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// SendFile 以 multipart 形式上传结果文件，caption 作为随附消息。
func (d *Discord) SendFile(path, caption string) error {
	if d.WebhookURL == "" {
		return fmt.Errorf("Discord webhook 未配置")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取附件失败: %w", err)
	}

	var lastErr error
	for i := 0; i < 3; i++ {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		if caption != "" {
			if err := w.WriteField("content", caption); err != nil {
				return err
			}
		}
		part, err := w.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			return err
		}
		if _, err := part.Write(data); err != nil {
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}

		req, _ := http.NewRequest("POST", d.WebhookURL, &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		if err := d.do(req, i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// do 执行单次请求；429 时按响应体里的 retry_after 等待后返回错误重试。
func (d *Discord) do(req *http.Request, attempt int) error {
	resp, err := d.Client.Do(req)
	if err != nil {
		time.Sleep(time.Duration(attempt+1) * d.retryDelay)
		return err
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode/100 == 2 {
		return nil
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		wait := time.Duration(attempt+1) * d.retryDelay
		if retry := gjson.GetBytes(body, "retry_after"); retry.Exists() {
			wait = time.Duration(retry.Float()*1000) * time.Millisecond
		}
		time.Sleep(wait)
		return fmt.Errorf("discord rate limited, waited %s", wait)
	}
	time.Sleep(time.Duration(attempt+1) * d.retryDelay)
	return fmt.Errorf("discord status=%d", resp.StatusCode)
}
