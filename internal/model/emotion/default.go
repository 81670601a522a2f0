package emotion

// Default 返回构建期内置的情绪映射。它始终有效，是远程刷新失败或
// 本地缓存损坏时的最终兜底，永远不会被丢弃。
func Default() Mapping {
	return Mapping{
		EmotionMap: map[string]string{
			"happiness": "喜悦",
			"sadness":   "悲伤",
			"anger":     "愤怒",
			"fear":      "恐惧",
			"surprise":  "惊讶",
			"neutral":   "平静",
			"disgust":   "厌恶",
			"anxiety":   "焦虑",
		},
		KeywordMap: map[string]string{
			"开心": "happiness", "快乐": "happiness", "喜悦": "happiness",
			"高兴": "happiness", "好棒": "happiness", "太好了": "happiness",
			"不错": "happiness", "满意": "happiness", "兴奋": "happiness",
			"伤心": "sadness", "难过": "sadness", "悲伤": "sadness",
			"痛苦": "sadness", "失望": "sadness", "沮丧": "sadness", "郁闷": "sadness",
			"生气": "anger", "愤怒": "anger", "烦躁": "anger", "恼火": "anger", "不爽": "anger",
			"害怕": "fear", "恐惧": "fear", "担心": "fear", "紧张": "fear", "不安": "fear",
			"惊讶": "surprise", "震惊": "surprise", "意外": "surprise",
			"没想到": "surprise", "吃惊": "surprise",
			"平静": "neutral", "平和": "neutral", "安静": "neutral",
			"放松": "neutral", "淡定": "neutral",
			"厌恶": "disgust", "恶心": "disgust", "讨厌": "disgust", "反感": "disgust",
			"焦虑": "anxiety", "着急": "anxiety", "慌": "anxiety",
			"不踏实": "anxiety", "忐忑": "anxiety",
		},
		SuggestionMap: map[string][]string{
			"happiness": {
				"你的快乐感染了我，让我们一起珍惜这份美好的心情",
				"看到你如此开心，我也感到温暖，继续保持这份积极的心态",
				"你的喜悦让我也充满能量，让我们一起分享这份快乐",
			},
			"sadness": {
				"我理解你现在的心情，每个人都会有低落的时候，这很正常",
				"你的感受很重要，我在这里倾听你，陪伴你度过这个时刻",
				"悲伤是人生的一部分，它让我们更懂得珍惜快乐，我与你同在",
			},
			"anger": {
				"我感受到你的愤怒，让我们先深呼吸，慢慢平复心情",
				"愤怒是正常的情绪反应，但我们可以选择如何表达它",
				"我理解你的不满，让我们一起找到更好的方式来处理这些情绪",
			},
			"fear": {
				"我理解你的担忧，让我们一起来面对这些恐惧",
				"害怕是人之常情，但请记住，你比想象中更坚强",
				"我在这里陪伴你，让我们一起慢慢克服这些不安",
			},
			"surprise": {
				"这个意外确实让人惊讶，让我们一起来理解这个变化",
				"惊喜或惊吓都是生活的一部分，我在这里支持你",
				"让我们一起来消化这个意外的消息，找到最好的应对方式",
			},
			"neutral": {
				"平静是一种很好的状态，让我们珍惜这份内心的安宁",
				"平和的心态是智慧的体现，继续保持这种状态",
				"你的平静让我也感到放松，让我们一起享受这份宁静",
			},
			"disgust": {
				"我理解你的反感，让我们找到更好的方式来处理这些感受",
				"厌恶是正常的情绪，但我们可以选择如何应对它",
				"我在这里支持你，让我们一起找到更积极的视角",
			},
			"anxiety": {
				"我感受到你的焦虑，让我们一起来缓解这些压力",
				"焦虑是暂时的，我们可以一起找到平静的方法",
				"我理解你的不安，让我们一步步来面对这些担忧",
			},
		},
		SummaryMap: map[string]string{
			"happiness": "你此刻正沉浸在喜悦之中，这种积极向上的情绪让人感到温暖和充满希望",
			"sadness":   "你正在经历一段低落的时期，这种悲伤的情绪需要被理解和接纳",
			"anger":     "你此刻感到愤怒，这种强烈的情绪需要被妥善地表达和处理",
			"fear":      "你正被恐惧和担忧所困扰，这种不安的情绪需要被安抚和疏导",
			"surprise":  "你正经历着意外的情绪波动，这种惊讶需要时间来消化和理解",
			"neutral":   "你保持着平静的心态，这种平和的状态让人感到舒适和安心",
			"disgust":   "你正经历着反感和厌恶的情绪，这种感受需要被理解和转化",
			"anxiety":   "你正被焦虑所困扰，这种不安的情绪需要被关注和缓解",
		},
	}
}
