package version

import "runtime"

var (
	// These values are injected during build - DO NOT MODIFY
	Version   = "VERSION_PLACEHOLDER"
	CommitSHA = "COMMIT_PLACEHOLDER"
	BuildDate = "DATE_PLACEHOLDER"
)

const appName = "InvoicePack"

func GetVersionInfo() string {
	return appName + " " + Version
}

func GetDetailedVersionInfo() string {
	return appName + "\n" +
		"Version:  " + Version + "\n" +
		"Commit:   " + CommitSHA + "\n" +
		"Built:    " + BuildDate + "\n" +
		"Go:       " + runtime.Version() + "\n"
}
