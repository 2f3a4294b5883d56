package rpc

import (
	"net/http"
	"time"

	"github.com/33cn/rps/types"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	wsBufferSize = 128
	wsWriteWait  = 10 * time.Second
)

// serveWS 每一笔执行完成的交易推送一条 TxResult，?execer= 可以只订阅一个执行器
func (j *JSONRPCServer) serveWS(w http.ResponseWriter, r *http.Request) {
	if !j.allow(w, r) {
		return
	}
	// 握手完成之前订阅，不会漏掉之后的交易
	id := uuid.New().String()
	execer := r.URL.Query().Get("execer")
	ch := j.exec.Subscribe(id, wsBufferSize)
	conn, err := j.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("ws upgrade", "err", err)
		j.exec.Unsubscribe(id)
		return
	}
	log.Info("ws subscribe", "id", id, "remote", r.RemoteAddr, "execer", execer)

	go j.wsRead(conn, id)
	go j.wsWrite(conn, id, execer, ch)
}

// wsRead 只用来发现连接断开
func (j *JSONRPCServer) wsRead(conn *websocket.Conn, id string) {
	defer func() {
		j.exec.Unsubscribe(id)
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Debug("ws read", "id", id, "err", err)
			return
		}
	}
}

func (j *JSONRPCServer) wsWrite(conn *websocket.Conn, id, execer string, ch <-chan *types.TxResult) {
	defer conn.Close()
	for res := range ch {
		if execer != "" && res.Execer != execer {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(fmtTxResult(res)); err != nil {
			log.Error("ws write", "id", id, "err", err)
			j.exec.Unsubscribe(id)
			return
		}
	}
}
