// Package fsbuild creates directories and seed files underneath an explicit
// build root. Every path handed to a Builder is relative to its Root and is
// resolved with securejoin, so a project name such as "../x" cannot write
// outside the tree being scaffolded. The process working directory is never
// consulted or changed.
package fsbuild
