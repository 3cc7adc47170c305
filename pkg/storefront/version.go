package storefront

// Version is the storefront release version.
const Version = "0.1.0"
