package notifier

// TextNotifier defines a minimal text notification interface.
// It is intentionally small so different components can depend on it without
// importing concrete implementations (e.g. Discord).
type TextNotifier interface {
	SendText(text string) error
}

// FileNotifier 在文本之外支持附件上传（结果文件）。
type FileNotifier interface {
	TextNotifier
	SendFile(path, caption string) error
}
