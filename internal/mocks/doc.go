// Package mocks provides centralized mock implementations for testing.
//
// Store interfaces are mocked with testify/mock so service tests can set
// expectations per call. Service interfaces are mocked with function fields
// so handler tests only stub what they exercise:
//
//	svc := &mocks.MockUserService{
//	    GetUserFn: func(ctx context.Context, id int64) (*domain.User, error) {
//	        return &domain.User{ID: id, Name: "Ada"}, nil
//	    },
//	}
//
// PassthroughTransactor runs transactional code without a database.
package mocks
