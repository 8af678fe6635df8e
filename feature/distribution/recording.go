package distribution

import "io"

// recordingBody counts the bytes read from an artifact body and calls onComplete
// on Close, only when the whole body was read. Aborted transfers are not counted.
type recordingBody struct {
	io.ReadCloser
	size       int64
	read       int64
	onComplete func()
}

func newRecordingBody(body io.ReadCloser, size int64, onComplete func()) *recordingBody {
	return &recordingBody{ReadCloser: body, size: size, onComplete: onComplete}
}

func (b *recordingBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	b.read += int64(n)
	return n, err
}

func (b *recordingBody) Close() error {
	err := b.ReadCloser.Close()
	if b.onComplete != nil && b.read >= b.size {
		b.onComplete()
	}
	b.onComplete = nil
	return err
}
