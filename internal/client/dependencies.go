package client

import (
	"net"
	"os"
	"time"
)

var netDialTimeout = net.DialTimeout
var osMkdirAll = os.MkdirAll
var osOpenFile = os.OpenFile
var timeDotNow = time.Now
