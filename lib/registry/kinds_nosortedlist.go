//go:build scratchpool_nosortedlist

package registry

var kinds = []Kind{
	KindList, KindSet, KindSortedSet, KindLinkedList, KindQueue,
	KindStack, KindMap, KindSortedMap, KindCustom,
}
