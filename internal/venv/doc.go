// Package venv provisions a Python virtual environment inside a scaffolded
// project and installs the default packages into it.
//
// Nothing here depends on shell activation. An Environment knows the absolute
// paths of its interpreter and pip, and Vars returns the VIRTUAL_ENV and PATH
// values that activation would have set; those are passed explicitly to every
// command run inside the environment.
package venv
