package provider

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FailureKind 划分远程调用失败的类别，供上层决定回退策略。
type FailureKind string

const (
	FailureTimeout FailureKind = "timeout"
	FailureNetwork FailureKind = "network"
	FailureHTTP    FailureKind = "http"
	FailureSchema  FailureKind = "schema"
)

// Failure 描述一次失败的远程调用。它始终以返回值传递，从不作为
// panic 或 error 穿透网关边界，这样每条失败路径都能被独立测试。
type Failure struct {
	Kind   FailureKind
	Status int
	Detail string
}

// String 便于日志输出。
func (f *Failure) String() string {
	if f == nil {
		return "ok"
	}
	if f.Kind == FailureHTTP {
		return fmt.Sprintf("%s(%d): %s", f.Kind, f.Status, f.Detail)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
}

// Outcome 是网关调用的带标签结果：要么携带原始负载，要么携带失败描述。
type Outcome struct {
	Payload json.RawMessage
	Failure *Failure
}

// OK 表示调用成功且负载可用。
func (o Outcome) OK() bool {
	return o.Failure == nil
}

func success(payload json.RawMessage) Outcome {
	return Outcome{Payload: payload}
}

func failure(kind FailureKind, detail string) Outcome {
	return Outcome{Failure: &Failure{Kind: kind, Detail: detail}}
}

func httpFailure(status int, detail string) Outcome {
	return Outcome{Failure: &Failure{Kind: FailureHTTP, Status: status, Detail: detail}}
}

// ExtractJSONObject 从模型输出中截取首个完整的 JSON 对象。
// 大模型偶尔会在 JSON 前后附带说明文字，这里只取花括号包住的部分。
func ExtractJSONObject(content string) (json.RawMessage, bool) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, false
	}
	return json.RawMessage(trimmed[start : end+1]), true
}
