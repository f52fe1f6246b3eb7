package paint

import "testing"

func TestChan_SendOpt(t *testing.T) {
	// A full mailbox makes SendOpt refuse instead of blocking.
	c := Chan{ch: make(chan Msg, 1)}

	if !c.SendOpt(PaintPermissionGrantedMsg{}) {
		t.Error("SendOpt on empty mailbox refused")
	}
	if c.SendOpt(PaintPermissionGrantedMsg{}) {
		t.Error("SendOpt on full mailbox accepted")
	}
}

func TestChan_SendDeliversInOrder(t *testing.T) {
	c := Chan{ch: make(chan Msg, 4)}
	c.Send(PaintPermissionGrantedMsg{})
	c.Send(PaintPermissionRevokedMsg{})

	if _, ok := (<-c.ch).(PaintPermissionGrantedMsg); !ok {
		t.Error("first message out of order")
	}
	if _, ok := (<-c.ch).(PaintPermissionRevokedMsg); !ok {
		t.Error("second message out of order")
	}
}
