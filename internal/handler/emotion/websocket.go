package emotion

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// 浏览器端口随开发环境变化，跨域校验交给部署层。
	CheckOrigin: func(r *http.Request) bool { return true },
}

// transcriptFrame 是客户端推送的一帧转写文本。
// 录音过程中 final=false 的中间帧持续到达，停止录音时发 final=true。
type transcriptFrame struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

// analysisFrame 是服务端推送的分析结果帧。
type analysisFrame struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId"`
	Final     bool        `json:"final"`
	Result    interface{} `json:"result"`
}

// handleLive 处理实时转写的情绪分析。中间帧走本地分类器即时回推，
// 最终帧走完整编排链路（含远程分类与文案充实）。
func (h *Handler) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[emotion] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	log.Printf("[emotion] live session %s opened", sessionID)

	for {
		var frame transcriptFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[emotion] live session %s read error: %v", sessionID, err)
			}
			return
		}

		if strings.TrimSpace(frame.Text) == "" {
			continue
		}

		var response analysisFrame
		if frame.Final {
			response = analysisFrame{
				Type:      "analysis",
				SessionID: sessionID,
				Final:     true,
				Result:    h.svc.Analyze(r.Context(), frame.Text),
			}
		} else {
			response = analysisFrame{
				Type:      "analysis",
				SessionID: sessionID,
				Final:     false,
				Result:    h.svc.AnalyzeLocal(frame.Text),
			}
		}

		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(response); err != nil {
			log.Printf("[emotion] live session %s write error: %v", sessionID, err)
			return
		}

		if frame.Final {
			log.Printf("[emotion] live session %s completed", sessionID)
			return
		}
	}
}
