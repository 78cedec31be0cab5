// Package initargs models the key/value argument tree compiled into a
// component and renders it as a C source fragment.
//
// A tree is made of leaves (a key and a string value) and arrays (a key and
// an ordered list of child nodes). The rendered fragment declares one static
// kv_entry per node and exports the tree through __initargs_root:
//
//	#include <initargs.h>
//
//	static struct kv_entry __initargs_autogen_0 = { .key = "x", .vtype = VTYPE_STR, .val = { .str = "1" } };
//	static struct kv_entry *__initargs_autogen_1[] = { &__initargs_autogen_0 };
//	static struct kv_entry __initargs_autogen_2 = { .key = "_", .vtype = VTYPE_ARR, .val = { .arr = { .sz = 1, .kvs = __initargs_autogen_1 } } };
//	struct kv_entry *__initargs_root = &__initargs_autogen_2;
package initargs
