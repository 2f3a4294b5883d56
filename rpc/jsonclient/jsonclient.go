// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonclient rpc 的客户端，命令行使用
package jsonclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// JSONClient a object of jsonclient
type JSONClient struct {
	url    string
	client *http.Client
	id     uint64
}

// NewJSONClient 地址没有 scheme 时加上 http://
func NewJSONClient(url string) (*JSONClient, error) {
	if url == "" {
		return nil, errors.New("empty rpc address")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	return &JSONClient{url: url, client: &http.Client{Timeout: 30 * time.Second}}, nil
}

type clientRequest struct {
	Method string         `json:"method"`
	Params [1]interface{} `json:"params"`
	ID     uint64         `json:"id"`
}

type clientResponse struct {
	ID     uint64           `json:"id"`
	Result *json.RawMessage `json:"result"`
	Error  interface{}      `json:"error"`
}

// Call 调用 Service.Method，结果解码到 resp
func (client *JSONClient) Call(method string, params, resp interface{}) error {
	req := &clientRequest{Method: method, ID: atomic.AddUint64(&client.id, 1)}
	req.Params[0] = params
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	postresp, err := client.client.Post(client.url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer postresp.Body.Close()
	if postresp.StatusCode != http.StatusOK {
		return fmt.Errorf("rpc %s: http status %s", method, postresp.Status)
	}
	b, err := io.ReadAll(postresp.Body)
	if err != nil {
		return err
	}
	cresp := &clientResponse{}
	if err := json.Unmarshal(b, cresp); err != nil {
		return err
	}
	if cresp.Error != nil {
		x, ok := cresp.Error.(string)
		if !ok {
			return fmt.Errorf("invalid error %v", cresp.Error)
		}
		if x == "" {
			x = "unspecified error"
		}
		return errors.New(x)
	}
	if cresp.Result == nil {
		return errors.New("Empty result")
	}
	return json.Unmarshal(*cresp.Result, resp)
}
