// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/33cn/rps/util/cli"
)

func main() {
	cli.RunRps("rps")
}
