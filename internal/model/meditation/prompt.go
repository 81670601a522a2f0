package meditation

// Prompt 描述一次冥想引导文案的生成请求，由调用方创建、消费一次。
type Prompt struct {
	// Type 是冥想类型标识，如 sleep、morning、anxiety、sos。
	Type string `json:"type"`
	// Scene 是自由文本的场景描述，会被插入到引导词正文中。
	Scene string `json:"scene"`
	// Duration 为可选的时长（分钟），仅供生成方参考。
	Duration int `json:"duration,omitempty"`
}
