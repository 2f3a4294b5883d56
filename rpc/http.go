package rpc

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"net/rpc/jsonrpc"

	"github.com/rs/cors"
)

// HTTPConn adapt HTTP connection to ReadWriteCloser
type HTTPConn struct {
	in  io.Reader
	out io.Writer
}

func (c *HTTPConn) Read(p []byte) (n int, err error)  { return c.in.Read(p) }
func (c *HTTPConn) Write(d []byte) (n int, err error) { return c.out.Write(d) }

// Close rpc 的 codec 在一个请求之后就不再使用
func (c *HTTPConn) Close() error { return nil }

// Handler jsonrpc 在 "/"，websocket 在 "/ws"
func (j *JSONRPCServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", j.serveJSON)
	if j.cfg.EnableWebsocket {
		mux.HandleFunc("/ws", j.serveWS)
	}
	co := cors.New(cors.Options{})
	return co.Handler(mux)
}

func (j *JSONRPCServer) allow(w http.ResponseWriter, r *http.Request) bool {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || !j.checkIPWhitelist(ip) {
		log.Error("HandlerFunc", "remote", r.RemoteAddr, "err", "not in whitelist")
		http.Error(w, "reject", http.StatusUnauthorized)
		return false
	}
	return true
}

func (j *JSONRPCServer) serveJSON(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !j.allow(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("HandlerFunc", "read body", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Debug("HandlerFunc", "remote", r.RemoteAddr, "req", string(data))
	serverCodec := jsonrpc.NewServerCodec(&HTTPConn{in: bytes.NewReader(data), out: w})
	w.Header().Set("Content-type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := j.s.ServeRequest(serverCodec); err != nil {
		log.Debug("Error while serving JSON request", "err", err)
	}
}

// Listen 返回实际监听的端口，绑定 :0 时有用
func (j *JSONRPCServer) Listen() (int, error) {
	listener, err := net.Listen("tcp", j.cfg.JrpcBindAddr)
	if err != nil {
		return 0, err
	}
	j.mu.Lock()
	j.l = listener
	j.mu.Unlock()
	go func() {
		err := http.Serve(listener, j.Handler())
		log.Info("jrpc server stopped", "err", err)
	}()
	port := listener.Addr().(*net.TCPAddr).Port
	log.Info("jrpc Listen", "addr", j.cfg.JrpcBindAddr, "port", port)
	return port, nil
}
