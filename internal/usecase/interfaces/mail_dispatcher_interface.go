package interfaces

import "context"

// IMailDispatcher abstracts outbound mail delivery (e.g. SMTP).
//
// Send delivers one message with a single binary attachment. Implementations
// must bound the delivery with a timeout; transport configuration (endpoint,
// credentials, sender address) is theirs, not the caller's.
type IMailDispatcher interface {
	Send(ctx context.Context, to, subject, bodyHTML, attachmentName string, attachment []byte) error
}
