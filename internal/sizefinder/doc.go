// Package sizefinder measures the disk usage of a directory's immediate children.
//
// Files are measured directly and folders by the recursive sum of the files
// beneath them, walked one branch at a time with fastwalk. The collected
// entries are ordered by size, largest first, and rendered using decimal
// units (KB, MB, GB, TB). Files that disappear or cannot be read during a scan
// are reported and skipped rather than failing the run.
package sizefinder
