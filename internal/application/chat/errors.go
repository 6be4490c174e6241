package chat

import "errors"

var errEmptyReply = errors.New("responder returned an empty reply")
