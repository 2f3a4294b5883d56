package executor

import (
	"sync"
	"testing"

	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/system/dapp"
	"github.com/33cn/rps/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errAbort = errors.New("abort")

// 写入两个 key，Fail 为 true 时在写入之后返回错误
type kvSet struct {
	Key   string
	Value string
	Fail  bool
}

func (*kvSet) ActionName() string { return "Set" }

type kvLocalFail struct{}

func (*kvLocalFail) ActionName() string { return "LocalFail" }

type kvReq struct {
	Key string `json:"key"`
}

type kvtest struct {
	dapp.DriverBase
}

func newKvtest(cfg *types.Config) dapp.Driver {
	d := &kvtest{}
	d.SetChild(d)
	return d
}

func (d *kvtest) GetDriverName() string { return "kvtest" }

func (d *kvtest) Exec_Set(payload *kvSet, tx *types.Transaction, index int) (*types.Receipt, error) {
	db := d.GetStateDB()
	db.Set([]byte("mavl-kvtest-"+payload.Key), []byte(payload.Value))
	db.Set([]byte("mavl-kvtest-time"), types.Encode(&types.Int64{Data: d.GetBlockTime()}))
	if payload.Fail {
		return nil, errAbort
	}
	log := &types.ReceiptLog{Ty: 1, Log: []byte(payload.Key)}
	return &types.Receipt{Ty: types.ExecOk, Logs: []*types.ReceiptLog{log}}, nil
}

func (d *kvtest) Exec_LocalFail(payload *kvLocalFail, tx *types.Transaction, index int) (*types.Receipt, error) {
	d.GetStateDB().Set([]byte("mavl-kvtest-localfail"), []byte("1"))
	return nil, nil
}

func (d *kvtest) ExecLocal_Set(payload *kvSet, tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	kv := &types.KeyValue{Key: []byte("LODB-kvtest-" + string(receipt.Logs[0].Log)), Value: []byte(payload.Value)}
	return &types.LocalDBSet{KV: []*types.KeyValue{kv}}, nil
}

func (d *kvtest) ExecLocal_LocalFail(payload *kvLocalFail, tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	d.GetLocalDB().Set([]byte("LODB-kvtest-localfail"), []byte("1"))
	return nil, errAbort
}

func (d *kvtest) Query_Get(req *kvReq) (types.Message, error) {
	value, err := d.GetStateDB().Get([]byte("mavl-kvtest-" + req.Key))
	if err != nil {
		return nil, err
	}
	return &types.ReplyString{Data: string(value)}, nil
}

func init() {
	dapp.Register("kvtest", newKvtest)
}

const from = "0x1000000000000000000000000000000000000001"

func newTestExec(t *testing.T) (*Executor, dbm.DB) {
	db, err := dbm.NewDB("test", "memdb", "", 0)
	require.NoError(t, err)
	return New(nil, db), db
}

func setTx(key, value string, fail bool) *types.Transaction {
	return &types.Transaction{Execer: "kvtest", From: from, Payload: &kvSet{Key: key, Value: value, Fail: fail}}
}

func TestExecTx(t *testing.T) {
	exec, db := newTestExec(t)
	exec.SetClock(func() int64 { return 100 })

	result, err := exec.ExecTx(setTx("a", "1", false))
	require.NoError(t, err)
	assert.True(t, result.IsOk())
	assert.Equal(t, int64(1), result.Height)
	assert.Equal(t, int64(100), result.BlockTime)
	assert.Equal(t, "Set", result.Action)
	require.Len(t, result.Receipt.Logs, 1)

	value, err := db.Get([]byte("mavl-kvtest-a"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(value))
	value, err = db.Get([]byte("LODB-kvtest-a"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(value))

	msg, err := exec.Query("kvtest", "Get", &kvReq{Key: "a"})
	require.NoError(t, err)
	assert.Equal(t, "1", msg.(*types.ReplyString).Data)
	msg, err = exec.Query("kvtest", "Get", []byte(`{"key":"a"}`))
	require.NoError(t, err)
	assert.Equal(t, "1", msg.(*types.ReplyString).Data)
	_, err = exec.Query("kvtest", "Get", &kvReq{Key: "b"})
	assert.Equal(t, types.ErrNotFound, err)
}

func TestExecTxRollback(t *testing.T) {
	exec, db := newTestExec(t)
	_, err := exec.ExecTx(setTx("a", "1", false))
	require.NoError(t, err)

	result, err := exec.ExecTx(setTx("a", "2", true))
	assert.Equal(t, errAbort, err)
	assert.False(t, result.IsOk())
	assert.Equal(t, errAbort.Error(), result.Err)
	assert.Equal(t, int64(1), exec.GetHeight())

	value, err := db.Get([]byte("mavl-kvtest-a"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(value))

	// ExecLocal 失败时状态也不能写入
	_, err = exec.ExecTx(&types.Transaction{Execer: "kvtest", From: from, Payload: &kvLocalFail{}})
	assert.Equal(t, errAbort, err)
	_, err = db.Get([]byte("mavl-kvtest-localfail"))
	assert.Equal(t, dbm.ErrNotFoundInDb, err)
	_, err = db.Get([]byte("LODB-kvtest-localfail"))
	assert.Equal(t, dbm.ErrNotFoundInDb, err)

	// 下一笔交易不受影响
	_, err = exec.ExecTx(setTx("b", "3", false))
	require.NoError(t, err)
	assert.Equal(t, int64(2), exec.GetHeight())
}

func TestExecTxBadTx(t *testing.T) {
	exec, _ := newTestExec(t)
	_, err := exec.ExecTx(nil)
	assert.Equal(t, types.ErrInvalidParam, err)
	_, err = exec.ExecTx(&types.Transaction{Execer: "nosuch", From: from, Payload: &kvSet{}})
	assert.Equal(t, types.ErrExecNotFound, err)
	_, err = exec.ExecTx(&types.Transaction{Execer: "kvtest", From: "bad", Payload: &kvSet{}})
	assert.Equal(t, types.ErrInvalidAddress, err)
	assert.Equal(t, int64(0), exec.GetHeight())
}

func TestMonotonicClock(t *testing.T) {
	exec, db := newTestExec(t)
	now := int64(1000)
	exec.SetClock(func() int64 { return now })
	_, err := exec.ExecTx(setTx("a", "1", false))
	require.NoError(t, err)

	// 时钟回拨
	now = 900
	result, err := exec.ExecTx(setTx("a", "2", false))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), result.BlockTime)
	assert.Equal(t, int64(1000), exec.GetBlockTime())

	now = 1200
	result, err = exec.ExecTx(setTx("a", "3", false))
	require.NoError(t, err)
	assert.Equal(t, int64(1200), result.BlockTime)

	// 重新打开时恢复高度和时间
	exec2 := New(nil, db)
	assert.Equal(t, int64(3), exec2.GetHeight())
	assert.Equal(t, int64(1200), exec2.GetBlockTime())
}

func TestSubscribe(t *testing.T) {
	exec, _ := newTestExec(t)
	ch := exec.Subscribe("s1", 4)
	_, err := exec.ExecTx(setTx("a", "1", false))
	require.NoError(t, err)
	_, err = exec.ExecTx(setTx("a", "1", true))
	require.Error(t, err)

	r1 := <-ch
	assert.True(t, r1.IsOk())
	r2 := <-ch
	assert.False(t, r2.IsOk())

	exec.Unsubscribe("s1")
	_, ok := <-ch
	assert.False(t, ok)
	exec.Unsubscribe("s1")
}

func TestConcurrentExec(t *testing.T) {
	exec, _ := newTestExec(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := exec.ExecTx(setTx("a", "1", false))
			assert.NoError(t, err)
			_, err = exec.Query("kvtest", "Get", &kvReq{Key: "a"})
			assert.True(t, err == nil || err == types.ErrNotFound)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(20), exec.GetHeight())
}

func TestGetCache(t *testing.T) {
	exec, _ := newTestExec(t)
	c1 := exec.GetCache("rps", 10)
	c2 := exec.GetCache("rps", 20)
	assert.True(t, c1 == c2)
	c1.Add("k", 1)
	v, ok := c2.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	stats := exec.GetMetrics().Snapshot()
	assert.Len(t, stats, 0)
}
