/*Package interval implements the coordinate arithmetic needed to describe a
  spliced genomic feature as a set of BED12 blocks.
  Input intervals use the zero-based, half-open [start, end) convention of
  BED files.  Block arithmetic is done on the inclusive [first, last]
  convention (as in GTF), so every Entry is converted with Closed() before
  block lengths and block-relative starts are computed.
  It assumes every position fits in a PosType, which is currently defined as
  int32 since that's what BAM files are limited to.
*/
package interval
