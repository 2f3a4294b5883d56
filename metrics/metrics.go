// Package metrics 执行器的统计数据
package metrics

import (
	"context"
	"sort"
	"time"

	"github.com/33cn/rps/types"
	log "github.com/inconshreveable/log15"
	go_metrics "github.com/rcrowley/go-metrics"
)

var mlog = log.New("module", "rps metrics")

// Metrics 每个执行器一个 registry，测试中可以同时存在多个
type Metrics struct {
	r go_metrics.Registry
}

// New 新建
func New() *Metrics {
	return &Metrics{r: go_metrics.NewRegistry()}
}

// Registry 底层的 registry
func (m *Metrics) Registry() go_metrics.Registry {
	return m.r
}

// MarkAction 记录一笔交易的执行结果和耗时
func (m *Metrics) MarkAction(execer, action string, ok bool, cost time.Duration) {
	name := execer + "." + action
	if ok {
		go_metrics.GetOrRegisterCounter(name+".ok", m.r).Inc(1)
	} else {
		go_metrics.GetOrRegisterCounter(name+".fail", m.r).Inc(1)
	}
	go_metrics.GetOrRegisterTimer(name+".time", m.r).Update(cost)
}

// MarkQuery 查询次数
func (m *Metrics) MarkQuery(execer, funcName string) {
	go_metrics.GetOrRegisterCounter(execer+".query."+funcName, m.r).Inc(1)
}

// Gauge 设置一个值
func (m *Metrics) Gauge(name string, v int64) {
	go_metrics.GetOrRegisterGauge(name, m.r).Update(v)
}

// Stat 一个统计项
type Stat struct {
	Name  string  `json:"name"`
	Count int64   `json:"count"`
	Value int64   `json:"value,omitempty"`
	Mean  float64 `json:"mean,omitempty"`
	Max   int64   `json:"max,omitempty"`
}

// Snapshot 所有统计项，按名字排序
func (m *Metrics) Snapshot() []*Stat {
	var stats []*Stat
	m.r.Each(func(name string, i interface{}) {
		switch metric := i.(type) {
		case go_metrics.Counter:
			stats = append(stats, &Stat{Name: name, Count: metric.Count()})
		case go_metrics.Gauge:
			stats = append(stats, &Stat{Name: name, Value: metric.Value()})
		case go_metrics.Timer:
			t := metric.Snapshot()
			stats = append(stats, &Stat{Name: name, Count: t.Count(), Mean: t.Mean(), Max: t.Max()})
		}
	})
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

//StartMetrics 根据配置定时把统计数据写到日志，ctx 结束时退出
func (m *Metrics) StartMetrics(ctx context.Context, cfg *types.Metrics) {
	if cfg == nil || !cfg.EnableMetrics {
		mlog.Info("Metrics data is not enabled to emit")
		return
	}
	interval := time.Duration(cfg.Interval) * time.Second
	mlog.Info("StartMetrics", "interval", interval)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.emit()
			}
		}
	}()
}

func (m *Metrics) emit() {
	for _, s := range m.Snapshot() {
		mlog.Info("metrics", "name", s.Name, "count", s.Count, "value", s.Value, "mean", s.Mean, "max", s.Max)
	}
}
