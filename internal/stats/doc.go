// Package stats computes per-file display statistics for site content:
// human-readable size strings and word counts.
//
// Word counting reads whole files, which is acceptable because entries and
// pages on a static site are small. Plain text files are split on
// whitespace; HTML files are reduced to the text of their <body> element
// with markup tags stripped before counting. Files of any other type, and
// files that cannot be read, count as zero words.
package stats
