package emotion

// Analysis 表示一次情绪分析的最终结果，字段面向调用方展示。
// 结果一经返回即不可变，生命周期完全由调用方持有。
type Analysis struct {
	// Emotion 是本地化后的情绪显示名（如 "喜悦"），而非规范标识。
	Emotion string `json:"emotion"`
	// Confidence 取值范围 [0,1]。远程与本地得分共享该量纲，但不保证相互校准。
	Confidence float64 `json:"confidence"`
	// Suggestions 为有序的安抚建议，首条是该情绪的总结语。
	Suggestions []string `json:"suggestions"`
}
