package version

// Version is the semantic version of the hospital server build.
const Version = "0.1.0"
