// Package announce publishes a tether host over mDNS so forwarding
// consumers on the local network can find it, and browses for tether
// hosts published by others.
//
// A tether host registers the _ptplink._tcp service with TXT records
// carrying the TXT schema version, the link id of the active camera
// session, the library version, and the camera model once one is
// attached. Announcements describe the forwarding endpoint, not the
// camera transport itself.
package announce
