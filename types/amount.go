// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CheckAmount 金额必须为正且不超过上限
func CheckAmount(amount int64) bool {
	if amount <= 0 || amount >= MaxCoin {
		return false
	}
	return true
}

// ParseAmount 把 "0.1" 这样的十进制金额转换成最小单位
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(ErrAmount, "parse amount %s: %v", s, err)
	}
	units := d.Shift(AmountDecimals)
	if !units.Equal(units.Truncate(0)) {
		return 0, errors.Wrapf(ErrAmount, "amount %s has more than %d decimals", s, AmountDecimals)
	}
	if units.Sign() < 0 || units.GreaterThanOrEqual(decimal.New(MaxCoin, 0)) {
		return 0, errors.Wrapf(ErrAmount, "amount %s out of range", s)
	}
	return units.IntPart(), nil
}

// FormatAmount 最小单位转换成十进制字符串，去掉多余的 0
func FormatAmount(amount int64) string {
	return decimal.New(amount, -AmountDecimals).String()
}

// FormatAmountFixed 固定小数位的显示
func FormatAmountFixed(amount int64, places int32) string {
	return decimal.New(amount, -AmountDecimals).StringFixed(places)
}
