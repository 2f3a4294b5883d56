// Package system 注册所有的执行器
package system

import (
	_ "github.com/33cn/rps/system/dapp/rps/executor"   //register rps executor
	_ "github.com/33cn/rps/system/dapp/token/executor" //register token executor
)
