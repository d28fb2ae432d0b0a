// Package progress 实现了顺序答题的提交与导航门控。
// 这里只有纯函数，不触碰任何存储。
package progress

// None 表示用户尚未回答任何题目时的哨兵下标。
const None = -1

// CanSubmit 判断是否允许提交第 requested 题的答案。
// 规则：只能提交紧跟在最后一道已答题之后的那道题，
// 或者重新提交任何已经答过的题；跳题提交被拒绝。
func CanSubmit(requested, lastAnswered int) bool {
	return requested <= lastAnswered+1
}

// CanAdvance 判断当前指针能否从第 requested 题向前移动。
// 当前题未作答时不能前进，最后一题之后也没有可去之处。
func CanAdvance(requested, lastAnswered, totalQuestions int) bool {
	return requested <= lastAnswered && requested+1 < totalQuestions
}

// Fraction 计算进度条数值，范围 [0,1]。
// 未答完时为 (lastAnswered+2)/total：正在作答的那道题提前计入进度，
// 这是产品有意保留的口径，不是四舍五入错误。
func Fraction(lastAnswered, totalQuestions int) float64 {
	if totalQuestions <= 0 {
		return 0
	}
	if lastAnswered < totalQuestions-1 {
		return float64(lastAnswered+2) / float64(totalQuestions)
	}
	return 1.0
}
