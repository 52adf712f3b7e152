package screener

import "sort"

// DefaultTopN 是对外产物默认保留的目标数量。
const DefaultTopN = 20

// Ranked 汇总一次批处理的最终排序结果与统计。
type Ranked struct {
	Targets  []Target
	Failures []Failure

	Processed int
	Succeeded int
	Failed    int
}

// Rank 将结果划分为成功/失败两组，按分数降序排序（稳定，平分保持原始
// 迭代顺序）。完整列表保留用于统计，产物截断由 Top 负责。
func Rank(results []ScoreResult) Ranked {
	out := Ranked{Processed: len(results)}
	for _, r := range results {
		if r.OK() {
			out.Targets = append(out.Targets, Target{Symbol: r.Symbol, Score: r.Score})
		} else {
			out.Failures = append(out.Failures, Failure{Symbol: r.Symbol, Reason: r.Reason})
		}
	}
	sort.SliceStable(out.Targets, func(i, j int) bool {
		return out.Targets[i].Score > out.Targets[j].Score
	})
	out.Succeeded = len(out.Targets)
	out.Failed = len(out.Failures)
	return out
}

// Top 返回前 n 个目标；n <= 0 时使用 DefaultTopN。
func (r Ranked) Top(n int) []Target {
	if n <= 0 {
		n = DefaultTopN
	}
	if n > len(r.Targets) {
		n = len(r.Targets)
	}
	return r.Targets[:n]
}

// TopSymbols 返回前 n 个目标的符号列表（产物与通知使用）。
func (r Ranked) TopSymbols(n int) []string {
	top := r.Top(n)
	out := make([]string, 0, len(top))
	for _, t := range top {
		out = append(out, t.Symbol)
	}
	return out
}
