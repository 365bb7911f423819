package server

import (
	"net"
	"os"
	"time"
)

var netListen = net.Listen
var osStat = os.Stat
var osReadFile = os.ReadFile
var osMkdir = os.Mkdir
var osMkdirAll = os.MkdirAll
var osWriteFile = os.WriteFile
var timeDotNow = time.Now
