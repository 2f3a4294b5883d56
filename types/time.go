package types

import (
	"time"
)

// Now 当前时间
func Now() time.Time {
	return time.Now()
}

// NowUnix 执行器使用的秒级时间
func NowUnix() int64 {
	return Now().Unix()
}
