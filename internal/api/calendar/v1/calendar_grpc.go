package calendarv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "calendar.v1.CalendarService"

const (
	CalendarService_CheckAvailability_FullMethodName     = "/calendar.v1.CalendarService/CheckAvailability"
	CalendarService_ListFreeSlots_FullMethodName         = "/calendar.v1.CalendarService/ListFreeSlots"
	CalendarService_CreateAppointment_FullMethodName     = "/calendar.v1.CalendarService/CreateAppointment"
	CalendarService_RescheduleAppointment_FullMethodName = "/calendar.v1.CalendarService/RescheduleAppointment"
	CalendarService_CancelAppointment_FullMethodName     = "/calendar.v1.CalendarService/CancelAppointment"
	CalendarService_CancelAllAppointments_FullMethodName = "/calendar.v1.CalendarService/CancelAllAppointments"
	CalendarService_ListMyAppointments_FullMethodName    = "/calendar.v1.CalendarService/ListMyAppointments"
	CalendarService_GetEffectiveWorkHours_FullMethodName = "/calendar.v1.CalendarService/GetEffectiveWorkHours"
	CalendarService_GetStatistics_FullMethodName         = "/calendar.v1.CalendarService/GetStatistics"
)

// CalendarServiceServer — серверная часть CalendarService.
type CalendarServiceServer interface {
	CheckAvailability(context.Context, *CheckAvailabilityRequest) (*CheckAvailabilityResponse, error)
	ListFreeSlots(context.Context, *ListFreeSlotsRequest) (*ListFreeSlotsResponse, error)
	CreateAppointment(context.Context, *CreateAppointmentRequest) (*CreateAppointmentResponse, error)
	RescheduleAppointment(context.Context, *RescheduleAppointmentRequest) (*RescheduleAppointmentResponse, error)
	CancelAppointment(context.Context, *CancelAppointmentRequest) (*CancelAppointmentResponse, error)
	CancelAllAppointments(context.Context, *CancelAllAppointmentsRequest) (*CancelAllAppointmentsResponse, error)
	ListMyAppointments(context.Context, *ListMyAppointmentsRequest) (*ListAppointmentsResponse, error)
	GetEffectiveWorkHours(context.Context, *GetEffectiveWorkHoursRequest) (*GetEffectiveWorkHoursResponse, error)
	GetStatistics(context.Context, *GetStatisticsRequest) (*GetStatisticsResponse, error)
	mustEmbedUnimplementedCalendarServiceServer()
}

// UnimplementedCalendarServiceServer встраивается в реализацию,
// чтобы новые методы не ломали сборку.
type UnimplementedCalendarServiceServer struct{}

func (UnimplementedCalendarServiceServer) CheckAvailability(context.Context, *CheckAvailabilityRequest) (*CheckAvailabilityResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckAvailability not implemented")
}

func (UnimplementedCalendarServiceServer) ListFreeSlots(context.Context, *ListFreeSlotsRequest) (*ListFreeSlotsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListFreeSlots not implemented")
}

func (UnimplementedCalendarServiceServer) CreateAppointment(context.Context, *CreateAppointmentRequest) (*CreateAppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAppointment not implemented")
}

func (UnimplementedCalendarServiceServer) RescheduleAppointment(context.Context, *RescheduleAppointmentRequest) (*RescheduleAppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RescheduleAppointment not implemented")
}

func (UnimplementedCalendarServiceServer) CancelAppointment(context.Context, *CancelAppointmentRequest) (*CancelAppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CancelAppointment not implemented")
}

func (UnimplementedCalendarServiceServer) CancelAllAppointments(context.Context, *CancelAllAppointmentsRequest) (*CancelAllAppointmentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CancelAllAppointments not implemented")
}

func (UnimplementedCalendarServiceServer) ListMyAppointments(context.Context, *ListMyAppointmentsRequest) (*ListAppointmentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMyAppointments not implemented")
}

func (UnimplementedCalendarServiceServer) GetEffectiveWorkHours(context.Context, *GetEffectiveWorkHoursRequest) (*GetEffectiveWorkHoursResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEffectiveWorkHours not implemented")
}

func (UnimplementedCalendarServiceServer) GetStatistics(context.Context, *GetStatisticsRequest) (*GetStatisticsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStatistics not implemented")
}

func (UnimplementedCalendarServiceServer) mustEmbedUnimplementedCalendarServiceServer() {}

func RegisterCalendarServiceServer(s grpc.ServiceRegistrar, srv CalendarServiceServer) {
	s.RegisterService(&CalendarService_ServiceDesc, srv)
}

func _CalendarService_CheckAvailability_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CheckAvailabilityRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServiceServer).CheckAvailability(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalendarService_CheckAvailability_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalendarServiceServer).CheckAvailability(ctx, req.(*CheckAvailabilityRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CalendarService_ListFreeSlots_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListFreeSlotsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServiceServer).ListFreeSlots(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalendarService_ListFreeSlots_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalendarServiceServer).ListFreeSlots(ctx, req.(*ListFreeSlotsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CalendarService_CreateAppointment_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateAppointmentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServiceServer).CreateAppointment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalendarService_CreateAppointment_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalendarServiceServer).CreateAppointment(ctx, req.(*CreateAppointmentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CalendarService_RescheduleAppointment_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RescheduleAppointmentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServiceServer).RescheduleAppointment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalendarService_RescheduleAppointment_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalendarServiceServer).RescheduleAppointment(ctx, req.(*RescheduleAppointmentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CalendarService_CancelAppointment_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CancelAppointmentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServiceServer).CancelAppointment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalendarService_CancelAppointment_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalendarServiceServer).CancelAppointment(ctx, req.(*CancelAppointmentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CalendarService_CancelAllAppointments_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CancelAllAppointmentsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServiceServer).CancelAllAppointments(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalendarService_CancelAllAppointments_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalendarServiceServer).CancelAllAppointments(ctx, req.(*CancelAllAppointmentsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CalendarService_ListMyAppointments_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListMyAppointmentsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServiceServer).ListMyAppointments(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalendarService_ListMyAppointments_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalendarServiceServer).ListMyAppointments(ctx, req.(*ListMyAppointmentsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CalendarService_GetEffectiveWorkHours_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetEffectiveWorkHoursRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServiceServer).GetEffectiveWorkHours(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalendarService_GetEffectiveWorkHours_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalendarServiceServer).GetEffectiveWorkHours(ctx, req.(*GetEffectiveWorkHoursRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CalendarService_GetStatistics_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetStatisticsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServiceServer).GetStatistics(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalendarService_GetStatistics_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalendarServiceServer).GetStatistics(ctx, req.(*GetStatisticsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var CalendarService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalendarServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CheckAvailability",
			Handler:    _CalendarService_CheckAvailability_Handler,
		},
		{
			MethodName: "ListFreeSlots",
			Handler:    _CalendarService_ListFreeSlots_Handler,
		},
		{
			MethodName: "CreateAppointment",
			Handler:    _CalendarService_CreateAppointment_Handler,
		},
		{
			MethodName: "RescheduleAppointment",
			Handler:    _CalendarService_RescheduleAppointment_Handler,
		},
		{
			MethodName: "CancelAppointment",
			Handler:    _CalendarService_CancelAppointment_Handler,
		},
		{
			MethodName: "CancelAllAppointments",
			Handler:    _CalendarService_CancelAllAppointments_Handler,
		},
		{
			MethodName: "ListMyAppointments",
			Handler:    _CalendarService_ListMyAppointments_Handler,
		},
		{
			MethodName: "GetEffectiveWorkHours",
			Handler:    _CalendarService_GetEffectiveWorkHours_Handler,
		},
		{
			MethodName: "GetStatistics",
			Handler:    _CalendarService_GetStatistics_Handler,
		},
	},
	Streams: []grpc.StreamDesc{},
}

// CalendarServiceClient — клиентская часть; все вызовы идут кодеком JSON.
type CalendarServiceClient interface {
	CheckAvailability(ctx context.Context, in *CheckAvailabilityRequest, opts ...grpc.CallOption) (*CheckAvailabilityResponse, error)
	ListFreeSlots(ctx context.Context, in *ListFreeSlotsRequest, opts ...grpc.CallOption) (*ListFreeSlotsResponse, error)
	CreateAppointment(ctx context.Context, in *CreateAppointmentRequest, opts ...grpc.CallOption) (*CreateAppointmentResponse, error)
	RescheduleAppointment(ctx context.Context, in *RescheduleAppointmentRequest, opts ...grpc.CallOption) (*RescheduleAppointmentResponse, error)
	CancelAppointment(ctx context.Context, in *CancelAppointmentRequest, opts ...grpc.CallOption) (*CancelAppointmentResponse, error)
	CancelAllAppointments(ctx context.Context, in *CancelAllAppointmentsRequest, opts ...grpc.CallOption) (*CancelAllAppointmentsResponse, error)
	ListMyAppointments(ctx context.Context, in *ListMyAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error)
	GetEffectiveWorkHours(ctx context.Context, in *GetEffectiveWorkHoursRequest, opts ...grpc.CallOption) (*GetEffectiveWorkHoursResponse, error)
	GetStatistics(ctx context.Context, in *GetStatisticsRequest, opts ...grpc.CallOption) (*GetStatisticsResponse, error)
}

type calendarServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCalendarServiceClient(cc grpc.ClientConnInterface) CalendarServiceClient {
	return &calendarServiceClient{cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *calendarServiceClient) CheckAvailability(ctx context.Context, in *CheckAvailabilityRequest, opts ...grpc.CallOption) (*CheckAvailabilityResponse, error) {
	out := new(CheckAvailabilityResponse)
	if err := c.cc.Invoke(ctx, CalendarService_CheckAvailability_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calendarServiceClient) ListFreeSlots(ctx context.Context, in *ListFreeSlotsRequest, opts ...grpc.CallOption) (*ListFreeSlotsResponse, error) {
	out := new(ListFreeSlotsResponse)
	if err := c.cc.Invoke(ctx, CalendarService_ListFreeSlots_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calendarServiceClient) CreateAppointment(ctx context.Context, in *CreateAppointmentRequest, opts ...grpc.CallOption) (*CreateAppointmentResponse, error) {
	out := new(CreateAppointmentResponse)
	if err := c.cc.Invoke(ctx, CalendarService_CreateAppointment_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calendarServiceClient) RescheduleAppointment(ctx context.Context, in *RescheduleAppointmentRequest, opts ...grpc.CallOption) (*RescheduleAppointmentResponse, error) {
	out := new(RescheduleAppointmentResponse)
	if err := c.cc.Invoke(ctx, CalendarService_RescheduleAppointment_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calendarServiceClient) CancelAppointment(ctx context.Context, in *CancelAppointmentRequest, opts ...grpc.CallOption) (*CancelAppointmentResponse, error) {
	out := new(CancelAppointmentResponse)
	if err := c.cc.Invoke(ctx, CalendarService_CancelAppointment_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calendarServiceClient) CancelAllAppointments(ctx context.Context, in *CancelAllAppointmentsRequest, opts ...grpc.CallOption) (*CancelAllAppointmentsResponse, error) {
	out := new(CancelAllAppointmentsResponse)
	if err := c.cc.Invoke(ctx, CalendarService_CancelAllAppointments_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calendarServiceClient) ListMyAppointments(ctx context.Context, in *ListMyAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error) {
	out := new(ListAppointmentsResponse)
	if err := c.cc.Invoke(ctx, CalendarService_ListMyAppointments_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calendarServiceClient) GetEffectiveWorkHours(ctx context.Context, in *GetEffectiveWorkHoursRequest, opts ...grpc.CallOption) (*GetEffectiveWorkHoursResponse, error) {
	out := new(GetEffectiveWorkHoursResponse)
	if err := c.cc.Invoke(ctx, CalendarService_GetEffectiveWorkHours_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calendarServiceClient) GetStatistics(ctx context.Context, in *GetStatisticsRequest, opts ...grpc.CallOption) (*GetStatisticsResponse, error) {
	out := new(GetStatisticsResponse)
	if err := c.cc.Invoke(ctx, CalendarService_GetStatistics_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}
