// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

/*
Package schema declares table and column descriptors for every relation the
platform owns.

# Why descriptors instead of raw strings?

SQL in the repositories is assembled from these descriptors, so a column
rename is a single-file change and a typo becomes a compile error instead
of a runtime "column does not exist".
*/
package schema
