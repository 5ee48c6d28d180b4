// Package connection implements the Connection Manager.
//
// The Connection Manager:
//   - Owns the connection state (disconnected, connecting, connected, failed)
//   - Requests wallet accounts, then reads the wallet's chain id
//   - Refuses any chain other than the expected one
//   - Surfaces every failure as a notification and stays re-connectable
package connection
