// Package platform resolves the host operating system family and the
// conventions that depend on it. Only Linux and Windows hosts are supported;
// both the validator and the scripts-directory resolver reject anything else.
package platform
