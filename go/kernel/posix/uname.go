package posix

import (
	co "github.com/usercorn-project/usercorn/go/kernel/common"
	"github.com/usercorn-project/usercorn/go/models"
)

func Uname(buf co.Buf, un *models.Uname) {
	buf.Pack(un)
}
