// Package inbox fetches report e-mails from a mailbox provider and records
// them for processing.
package inbox

import "medreport/internal"

type Connector interface {
	FetchInbox(label string, max int) ([]internal.FetchedReportMessage, error)
}
