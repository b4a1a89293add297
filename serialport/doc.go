// Package serialport opens the serial link to the device updater.
//
// It wraps go.bug.st/serial with the settings the updater expects
// (115200 baud, 8N1) and a read timeout, so that a missing acknowledgement
// shows up as an empty read instead of blocking forever.
//
//	port, err := serialport.Open(serialport.DefaultConfig("COM9"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
package serialport
