package global

import (
	"github.com/haierkeys/keep-note-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "Keep Note Service"
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}
