package screener

// ScoreResult 是单个符号的处理结果：Reason 为空表示成功。
type ScoreResult struct {
	Symbol string
	Score  float64
	Reason string
}

func (r ScoreResult) OK() bool { return r.Reason == "" }

// Target 是排序后的 (符号, 分数) 对。
type Target struct {
	Symbol string
	Score  float64
}

// Failure 保留失败符号及原因，供结果透明展示。
type Failure struct {
	Symbol string
	Reason string
}
