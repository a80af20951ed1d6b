package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testNodeComponent struct {
	Name string
}

type testTrailComponent struct {
	Progress float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试ID从1开始且唯一
	if id1 != 1 || id2 != 2 {
		t.Errorf("Expected IDs 1 and 2, got %d and %d", id1, id2)
	}

	if em.EntityCount() != 2 {
		t.Errorf("EntityCount: got %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testNodeComponent{Name: "path"})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testNodeComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	if comp.(*testNodeComponent).Name != "path" {
		t.Errorf("Component data mismatch, got %+v", comp)
	}

	// 未创建的实体不接受组件
	em.AddComponent(EntityID(99), &testNodeComponent{})
	if _, found := em.GetComponent(EntityID(99), reflect.TypeOf(&testNodeComponent{})); found {
		t.Error("Unknown entity should not get components")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testNodeComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if _, found := em.GetComponent(id, reflect.TypeOf(&testNodeComponent{})); !found {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if _, found := em.GetComponent(id, reflect.TypeOf(&testNodeComponent{})); found {
		t.Error("Entity should be removed after cleanup")
	}
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount after cleanup: got %d, want 0", em.EntityCount())
	}
}

func TestGetEntitiesWith_SortedByID(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 20)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testNodeComponent{})
		ids = append(ids, id)
	}

	got := em.GetEntitiesWith(reflect.TypeOf(&testNodeComponent{}))
	if len(got) != len(ids) {
		t.Fatalf("Expected %d entities, got %d", len(ids), len(got))
	}
	for i := range got {
		if got[i] != ids[i] {
			t.Fatalf("Entities should be sorted by ID, got %v", got)
		}
	}
}

func TestGenericHelpers(t *testing.T) {
	em := NewEntityManager()

	both := em.CreateEntity()
	AddComponent(em, both, &testNodeComponent{Name: "hit"})
	AddComponent(em, both, &testTrailComponent{Progress: 0.5})

	nodeOnly := em.CreateEntity()
	AddComponent(em, nodeOnly, &testNodeComponent{Name: "model"})

	node, ok := GetComponent[*testNodeComponent](em, both)
	if !ok || node.Name != "hit" {
		t.Errorf("GetComponent: got %+v, %v", node, ok)
	}

	if _, ok := GetComponent[*testTrailComponent](em, nodeOnly); ok {
		t.Error("nodeOnly should not have a trail component")
	}

	if got := GetEntitiesWith1[*testNodeComponent](em); len(got) != 2 {
		t.Errorf("GetEntitiesWith1: got %v, want 2 entities", got)
	}

	got := GetEntitiesWith2[*testNodeComponent, *testTrailComponent](em)
	if len(got) != 1 || got[0] != both {
		t.Errorf("GetEntitiesWith2: got %v, want [%d]", got, both)
	}
}
